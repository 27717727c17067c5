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

package adc

import (
	"fmt"
)

// Kind is the single-letter ADC header class: B broadcast, C direct (to a
// client-path peer), D direct (hub-routed to a SID), E echo, F feature
// broadcast, H hub-local (no SID routing), I info, U client-to-client.
type Kind byte

const (
	KindBroadcast Kind = 'B'
	KindDirect    Kind = 'D'
	KindEcho      Kind = 'E'
	KindFeature   Kind = 'F'
	KindHub       Kind = 'H'
	KindInfo      Kind = 'I'
	KindUDP       Kind = 'U'
	KindClient    Kind = 'C' // client-to-client session, no header class byte
)

// Message is one decoded ADC line: "<Kind><CMD> [<From>] [<To>] params...".
type Message struct {
	Kind   Kind
	Cmd    string
	From   SID
	To     SID
	HasTo  bool
	Params Params
	// Bare holds a single unprefixed positional token carried by a handful
	// of I/H-kind commands (GPA's salt, PAS's hash) that have no From SID
	// and whose one argument isn't a named "XXvalue" parameter.
	Bare string
	Raw  string
}

// ParseHub decodes a hub-context ADC line, where the header carries a
// From SID (and, for D-kind, a To SID) before the parameter tokens.
//
// KindInfo is deliberately not grouped with the From-SID kinds below: info
// messages are hub-to-client and have no sender, so "I<CMD>" never carries
// a From SID header. ISID is the one exception — the hub's single bare
// argument there is the session id it just assigned us, which callers read
// off msg.From for symmetry with every other SID-bearing message. IGPA's
// bare argument (the password salt) has no such convention to reuse, so it
// lands in msg.Bare instead.
func ParseHub(line string) (Message, error) {
	fields := SplitFields(line)
	if len(fields) == 0 || len(fields[0]) < 1 {
		return Message{}, fmt.Errorf("adc: empty line")
	}
	head := fields[0]
	kind := Kind(head[0])
	cmd := head[1:]

	msg := Message{Kind: kind, Cmd: cmd, Raw: line}
	idx := 1

	switch kind {
	case KindBroadcast, KindEcho, KindFeature, KindUDP:
		if len(fields) < 2 {
			return Message{}, fmt.Errorf("adc: %s missing From SID", cmd)
		}
		sid, err := ParseSID(fields[1])
		if err != nil {
			return Message{}, err
		}
		msg.From = sid
		idx = 2
	case KindDirect, KindClient:
		if len(fields) < 3 {
			return Message{}, fmt.Errorf("adc: %s missing From/To SID", cmd)
		}
		from, err := ParseSID(fields[1])
		if err != nil {
			return Message{}, err
		}
		to, err := ParseSID(fields[2])
		if err != nil {
			return Message{}, err
		}
		msg.From, msg.To, msg.HasTo = from, to, true
		idx = 3
	case KindInfo:
		idx = 1
		switch cmd {
		case CmdSID:
			if len(fields) < 2 {
				return Message{}, fmt.Errorf("adc: %s missing assigned SID", cmd)
			}
			sid, err := ParseSID(fields[1])
			if err != nil {
				return Message{}, err
			}
			msg.From = sid
			idx = 2
		case CmdGPA:
			if len(fields) >= 2 {
				msg.Bare = fields[1]
				idx = 2
			}
		}
	case KindHub:
		idx = 1
	default:
		return Message{}, fmt.Errorf("adc: unrecognised header kind %q", string(kind))
	}

	params, err := ParseParams(fields[idx:])
	if err != nil {
		return Message{}, err
	}
	msg.Params = params
	return msg, nil
}

// ParseClient decodes a client-to-client-context ADC line (the CC session
// protocol, spec §5), which carries no SID header at all: "CMD params...".
func ParseClient(line string) (Message, error) {
	fields := SplitFields(line)
	if len(fields) == 0 {
		return Message{}, fmt.Errorf("adc: empty line")
	}
	params, err := ParseParams(fields[1:])
	if err != nil {
		return Message{}, err
	}
	return Message{Cmd: fields[0], Params: params, Raw: line}, nil
}

// EncodeHub renders a hub-context message back into wire form.
func EncodeHub(m Message) string {
	head := string(byte(m.Kind)) + m.Cmd
	switch m.Kind {
	case KindBroadcast, KindEcho, KindFeature, KindUDP:
		head += " " + m.From.String()
	case KindDirect, KindClient:
		head += " " + m.From.String() + " " + m.To.String()
	case KindInfo:
		if m.Cmd == CmdSID {
			head += " " + m.From.String()
		}
	}
	if m.Bare != "" {
		head += " " + Escape(m.Bare)
	}
	if len(m.Params) == 0 {
		return head
	}
	return head + " " + m.Params.Encode()
}

// EncodeClient renders a CC-context message ("CMD params...").
func EncodeClient(cmd string, p Params) string {
	if len(p) == 0 {
		return cmd
	}
	return cmd + " " + p.Encode()
}

// Well-known ADC command verbs (spec §4.3/§5).
const (
	CmdSUP = "SUP" // supported features
	CmdSTA = "STA" // status
	CmdINF = "INF" // user/client info
	CmdMSG = "MSG" // chat message
	CmdSCH = "SCH" // search request
	CmdRES = "RES" // search result
	CmdCTM = "CTM" // connect to me
	CmdRCM = "RCM" // reverse connect to me
	CmdGPA = "GPA" // get password (challenge)
	CmdPAS = "PAS" // password
	CmdQUI = "QUI" // quit/disconnect
	CmdGET = "GET" // request a data block
	CmdSND = "SND" // data block follows
	CmdGFI = "GFI" // get file info
	CmdSID = "SID" // assign session id
)
