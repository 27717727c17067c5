/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package nmdc

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is one parsed "$Command args" frame (terminator already split
// off by the net endpoint's framed reader). Cmd is empty for a bare chat
// line (NMDC allows plain text frames outside of "$..." commands).
type Message struct {
	Cmd  string
	Arg  string
	Raw  string
}

// Parse splits a raw, unescaped frame body into a command/argument pair.
// A frame not starting with '$' is a chat line and is returned with an
// empty Cmd.
func Parse(raw string) Message {
	if !strings.HasPrefix(raw, "$") {
		return Message{Raw: raw}
	}
	body := raw[1:]
	if idx := strings.IndexByte(body, ' '); idx >= 0 {
		return Message{Cmd: body[:idx], Arg: body[idx+1:], Raw: raw}
	}
	return Message{Cmd: body, Raw: raw}
}

// Encode builds a raw (unescaped) "$Cmd args" frame. The caller is
// responsible for Escape-ing any argument text drawn from user content.
func Encode(cmd, arg string) string {
	if arg == "" {
		return "$" + cmd
	}
	return "$" + cmd + " " + arg
}

// Lock is the parsed body of a $Lock frame: "$Lock <lock> Pk=<pk>".
type Lock struct {
	Lock string
	Pk   string
}

// ParseLock parses a $Lock argument string.
func ParseLock(arg string) Lock {
	fields := strings.SplitN(arg, " ", 2)
	l := Lock{Lock: fields[0]}
	if len(fields) == 2 {
		if strings.HasPrefix(fields[1], "Pk=") {
			l.Pk = strings.TrimPrefix(fields[1], "Pk=")
		}
	}
	return l
}

// MyINFO is the decoded body of "$MyINFO $ALL <nick> <desc><tag?>$ $<conn><flag>$<mail>$<size>$".
type MyINFO struct {
	Nick        string
	Description string
	Tag         string
	Connection  string
	Flag        byte
	Mail        string
	ShareSize   int64
}

// ParseMyINFO parses a MyINFO argument (including the leading "$ALL ").
func ParseMyINFO(arg string) (MyINFO, error) {
	const prefix = "$ALL "
	if !strings.HasPrefix(arg, prefix) {
		return MyINFO{}, fmt.Errorf("nmdc: MyINFO missing $ALL prefix")
	}
	arg = arg[len(prefix):]

	sp := strings.IndexByte(arg, ' ')
	if sp < 0 {
		return MyINFO{}, fmt.Errorf("nmdc: MyINFO missing nick separator")
	}
	nick := arg[:sp]
	rest := arg[sp+1:]

	// "$ $" between the tag and the connection field is two delimiters with
	// a bare space between them, not one: splitting on only 3 "$" folds
	// that space into connAndFlag and shifts mail/sizeStr off by one, so
	// this needs 5 parts with parts[1] (the bare space) discarded.
	parts := strings.SplitN(rest, "$", 5)
	if len(parts) < 5 {
		return MyINFO{}, fmt.Errorf("nmdc: MyINFO has too few $ fields")
	}

	descAndTag := parts[0]
	connAndFlag := parts[2]
	mail := parts[3]
	sizeStr := strings.TrimSuffix(parts[4], "$")

	desc, tag := descAndTag, ""
	if i := strings.IndexByte(descAndTag, '<'); i >= 0 && strings.HasSuffix(descAndTag, ">") {
		desc, tag = descAndTag[:i], descAndTag[i:]
	}

	var conn string
	var flag byte
	if len(connAndFlag) > 0 {
		conn = connAndFlag[:len(connAndFlag)-1]
		flag = connAndFlag[len(connAndFlag)-1]
	}

	var size int64
	if sizeStr != "" {
		size, _ = strconv.ParseInt(sizeStr, 10, 64)
	}

	return MyINFO{
		Nick:        nick,
		Description: desc,
		Tag:         tag,
		Connection:  conn,
		Flag:        flag,
		Mail:        mail,
		ShareSize:   size,
	}, nil
}

// EncodeMyINFO renders a MyINFO body (argument only, "$ALL " included).
func EncodeMyINFO(i MyINFO) string {
	return fmt.Sprintf("$ALL %s %s%s$ $%s%c$%s$%d$",
		i.Nick, Escape(i.Description), i.Tag, i.Connection, i.Flag, Escape(i.Mail), i.ShareSize)
}

// Search is the decoded body of a $Search frame.
type Search struct {
	// Target is either "Hub:<nick>" (passive) or "<ip>:<port>" (active).
	Target     string
	SizeLimit  byte // 'F' free, 'T' constrained
	SizeAtLeast bool // second token: 'F' at-least, 'T' at-most
	Size       int64
	Type       int
	Query      string
}

// ParseSearch parses "$Search <target> <F|T>?<F|T>?<size>?<type>?<query>".
func ParseSearch(arg string) (Search, error) {
	sp := strings.IndexByte(arg, ' ')
	if sp < 0 {
		return Search{}, fmt.Errorf("nmdc: Search missing target")
	}
	target := arg[:sp]
	fields := strings.Split(arg[sp+1:], "?")
	if len(fields) != 5 {
		return Search{}, fmt.Errorf("nmdc: Search expects 5 ?-separated fields, got %d", len(fields))
	}
	size, _ := strconv.ParseInt(fields[2], 10, 64)
	typ, _ := strconv.Atoi(fields[3])
	return Search{
		Target:      target,
		SizeLimit:   fields[0][0],
		SizeAtLeast: fields[1] == "F",
		Size:        size,
		Type:        typ,
		Query:       strings.ReplaceAll(fields[4], "$", " "),
	}, nil
}

// EncodeSearch renders a $Search body.
func EncodeSearch(s Search) string {
	atLeast := "T"
	if s.SizeAtLeast {
		atLeast = "F"
	}
	q := strings.ReplaceAll(s.Query, " ", "$")
	return fmt.Sprintf("%s %c?%s?%d?%d?%s", s.Target, s.SizeLimit, atLeast, s.Size, s.Type, q)
}

// SearchResult is the decoded body of a "$SR" legacy search reply.
type SearchResult struct {
	Nick     string
	Path     string
	Size     int64
	Slots    int
	MaxSlots int
	TTH      string
	HubAddr  string
}

// ParseSearchResult parses "$SR <from> <path>\x05<size> <slots>/<maxslots>\x05[TTH:<tth>] (<hub>)".
func ParseSearchResult(arg string) (SearchResult, error) {
	sp := strings.IndexByte(arg, ' ')
	if sp < 0 {
		return SearchResult{}, fmt.Errorf("nmdc: SR missing nick")
	}
	nick := arg[:sp]
	rest := arg[sp+1:]

	hubStart := strings.LastIndexByte(rest, '(')
	hubEnd := strings.LastIndexByte(rest, ')')
	hub := ""
	if hubStart >= 0 && hubEnd > hubStart {
		hub = rest[hubStart+1 : hubEnd]
		rest = strings.TrimSpace(rest[:hubStart])
	}

	segs := strings.Split(rest, "\x05")
	if len(segs) < 2 {
		return SearchResult{}, fmt.Errorf("nmdc: SR missing \\x05 separators")
	}
	path := segs[0]
	var size int64
	slotField := segs[1]
	if sp := strings.IndexByte(slotField, ' '); sp >= 0 {
		size, _ = strconv.ParseInt(slotField[:sp], 10, 64)
		slotField = slotField[sp+1:]
	}

	tth := ""
	if len(segs) >= 3 {
		tth = strings.TrimPrefix(segs[2], "TTH:")
	}

	var slots, max int
	if sp := strings.IndexByte(slotField, '/'); sp >= 0 {
		slots, _ = strconv.Atoi(slotField[:sp])
		max, _ = strconv.Atoi(slotField[sp+1:])
	}

	return SearchResult{
		Nick:     nick,
		Path:     path,
		Size:     size,
		Slots:    slots,
		MaxSlots: max,
		TTH:      tth,
		HubAddr:  hub,
	}, nil
}

// EncodeSearchResult renders a $SR search-reply body. When the search that
// prompted it carried a "Hub:<nick>" target (the asker wants the hub to
// relay replies rather than accept them over UDP), askerNick must be set
// so the hub can route the frame; pass "" for a direct UDP reply to an
// active searcher.
func EncodeSearchResult(sr SearchResult, askerNick string) string {
	seg := fmt.Sprintf("%d %d/%d", sr.Size, sr.Slots, sr.MaxSlots)
	if sr.TTH != "" {
		seg += "\x05TTH:" + sr.TTH
	}
	body := fmt.Sprintf("%s %s\x05%s (%s)", sr.Nick, Escape(sr.Path), seg, sr.HubAddr)
	if askerNick != "" {
		body += "\x05" + askerNick
	}
	return body
}

// ADCGet is the decoded body of a legacy "$ADCGET <type> <id> <start> <bytes>".
type ADCGet struct {
	Type  string
	ID    string
	Start int64
	Bytes int64
}

// ParseADCGet parses a $ADCGET argument, honouring the "\ " escape for
// spaces inside id.
func ParseADCGet(arg string) (ADCGet, error) {
	fields := splitUnescaped(arg)
	if len(fields) != 4 {
		return ADCGet{}, fmt.Errorf("nmdc: ADCGET expects 4 fields, got %d", len(fields))
	}
	start, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ADCGet{}, err
	}
	bytes, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return ADCGet{}, err
	}
	return ADCGet{Type: fields[0], ID: unescapeSpace(fields[1]), Start: start, Bytes: bytes}, nil
}

// EncodeADCGet renders a $ADCGET argument.
func EncodeADCGet(g ADCGet) string {
	return fmt.Sprintf("%s %s %d %d", g.Type, escapeSpace(g.ID), g.Start, g.Bytes)
}

// EncodeADCSnd renders a $ADCSND argument (same shape as $ADCGET).
func EncodeADCSnd(g ADCGet) string {
	return fmt.Sprintf("%s %s %d %d", g.Type, escapeSpace(g.ID), g.Start, g.Bytes)
}

func escapeSpace(s string) string {
	return strings.ReplaceAll(s, " ", "\\ ")
}

func unescapeSpace(s string) string {
	return strings.ReplaceAll(s, "\\ ", " ")
}

// splitUnescaped splits on un-escaped spaces (a space not preceded by '\').
func splitUnescaped(s string) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == ' ' {
			cur.WriteByte(' ')
			i++
			continue
		}
		if s[i] == ' ' {
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(s[i])
	}
	out = append(out, cur.String())
	return out
}
