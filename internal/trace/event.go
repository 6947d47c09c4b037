package trace

import (
	"fmt"
	"time"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // мгновенное событие без пары
)

var kindNames = map[Kind]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // CLI command
	ScopePass                    // lex, parse, eval
	ScopeFile                    // one file of a directory check
	ScopeToken                   // individual tokens and statements
)

var scopeNames = map[Scope]string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeToken: "token"}

func (s Scope) String() string {
	if n, ok := scopeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Scope(%d)", uint8(s))
}

// Field is one key/value annotation of an end event. Fields keep the order
// they were added in.
type Field struct {
	Key   string
	Value string
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time     // wall-clock timestamp
	Seq      uint64        // per-tracer sequence number, set by the tracer
	Kind     Kind          // event kind
	Scope    Scope         // granularity level
	SpanID   uint64        // unique span identifier
	ParentID uint64        // parent span (0 if root)
	Depth    int           // nesting depth, 0 for root spans
	Name     string        // e.g. "parse", "file:examples/a.calc"
	Detail   string        // optional detail message
	Elapsed  time.Duration // span duration, end events only
	Fields   []Field
}
