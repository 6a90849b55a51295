package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so struct
// tags name the keys, which become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}
	var sb strings.Builder
	p := ednPrinter{out: &sb, pretty: pretty}
	p.value(generic, 0)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

type ednPrinter struct {
	out    *strings.Builder
	pretty bool
}

func (p ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.out.WriteString("nil")
	case bool:
		p.out.WriteString(strconv.FormatBool(t))
	case string:
		p.out.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			p.out.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			p.out.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
		}
	case []any:
		p.coll('[', ']', len(t), depth, func(i int) { p.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.coll('{', '}', len(keys), depth, func(i int) {
			p.out.WriteString(keyword(keys[i]))
			p.out.WriteByte(' ')
			p.value(t[keys[i]], depth+1)
		})
	default:
		p.out.WriteString(strconv.Quote(fmt.Sprint(t)))
	}
}

// coll writes n elements between open and close, one per line when pretty.
func (p ednPrinter) coll(open, close byte, n, depth int, elem func(i int)) {
	p.out.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case p.pretty:
			p.out.WriteByte('\n')
			p.out.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			p.out.WriteByte(' ')
		}
		elem(i)
	}
	if p.pretty && n > 0 {
		p.out.WriteByte('\n')
		p.out.WriteString(strings.Repeat("  ", depth))
	}
	p.out.WriteByte(close)
}

func keyword(k string) string {
	return ":" + strings.Join(strings.Fields(k), "-")
}
