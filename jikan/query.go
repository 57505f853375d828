package jikan

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

const queryDateLayout = "2006-01-02"

// query is an ordered list of query-string parameters.
// Keys are emitted in insertion order so identical inputs yield identical URLs.
type query struct {
	keys   []string
	values []string
}

func (q *query) set(key, value string) {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
}

// setString adds key unless value is empty
func (q *query) setString(key, value string) {
	if value != "" {
		q.set(key, value)
	}
}

// setInt adds key unless value is zero
func (q *query) setInt(key string, value int) {
	if value != 0 {
		q.set(key, strconv.Itoa(value))
	}
}

// setDate adds key unless t is the zero time
func (q *query) setDate(key string, t time.Time) {
	if !t.IsZero() {
		q.set(key, t.Format(queryDateLayout))
	}
}

func (q *query) encode() string {
	if q == nil || len(q.keys) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, key := range q.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.values[i]))
	}
	return sb.String()
}

// buildURL joins base with escaped path segments and an optional query.
// Empty segments are skipped.
func buildURL(base string, segments []string, q *query) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(seg))
	}
	if encoded := q.encode(); encoded != "" {
		sb.WriteByte('?')
		sb.WriteString(encoded)
	}
	return sb.String()
}
