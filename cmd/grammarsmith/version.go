package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"grammarsmith/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool" msgpack:"tool"`
	Version   string `json:"version" msgpack:"version"`
	GitCommit string `json:"git_commit,omitempty" msgpack:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" msgpack:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show grammarsmith build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, _ []string) error {
	s, err := readSettings(cmd)
	if err != nil {
		return err
	}
	payload := versionPayload{
		Tool:      "grammarsmith",
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	out := cmd.OutOrStdout()
	switch s.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatMsgPack:
		return msgpack.NewEncoder(out).Encode(payload)
	}
	_, err = fmt.Fprintln(out, version.String(s.color))
	return err
}
