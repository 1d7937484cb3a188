package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oba-ldap/bercodec/internal/ber"
)

// renderer writes one decoded value to w.
type renderer func(w io.Writer, v ber.Value) error

func rendererFor(format string) (renderer, error) {
	switch format {
	case "tree", "":
		return renderTree, nil
	case "table":
		return renderTable, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want tree or table)", format)
	}
}

// node is one value in a flattened tree walk.
type node struct {
	depth  int
	path   string
	tag    ber.Tag
	kind   string
	detail string
}

func flatten(v ber.Value) []node {
	var nodes []node
	var walk func(v ber.Value, depth int, path string)
	walk = func(v ber.Value, depth int, path string) {
		kind, detail := describe(v)
		nodes = append(nodes, node{depth: depth, path: path, tag: v.Tag(), kind: kind, detail: detail})
		if seq, ok := v.(ber.Sequence); ok {
			for i, item := range seq.Items() {
				walk(item, depth+1, path+"."+strconv.Itoa(i))
			}
		}
	}
	walk(v, 0, "0")
	return nodes
}

// describe names the decoded kind of v and formats its content.
func describe(v ber.Value) (kind, detail string) {
	switch v := v.(type) {
	case ber.Boolean:
		return "BOOLEAN", strconv.FormatBool(v.Bool())
	case ber.Integer:
		return "INTEGER", v.String()
	case ber.Null:
		return "NULL", ""
	case ber.ObjectIdentifier:
		return "OID", v.String()
	case ber.Sequence:
		return "SEQUENCE", fmt.Sprintf("(%d items)", v.Len())
	case ber.IdentifiedString:
		if v.IsBinary() {
			return "STRING", "0x" + hex.EncodeToString(v.Bytes()) + " (binary)"
		}
		text, err := v.Text()
		if err != nil {
			text = v.String()
		}
		return "STRING", strconv.Quote(text)
	default:
		return fmt.Sprintf("%T", v), ""
	}
}

func renderTree(w io.Writer, v ber.Value) error {
	for _, n := range flatten(v) {
		line := strings.Repeat("  ", n.depth) + n.tag.String() + " " + n.kind
		if n.detail != "" {
			line += " " + n.detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, v ber.Value) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Tag", "Type", "Value"})
	for _, n := range flatten(v) {
		t.AppendRow(table.Row{n.path, n.tag.String(), n.kind, n.detail})
	}
	t.Render()
	return nil
}
