package xmlrpc

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// DateTimeFormat is the dateTime.iso8601 layout used on the wire.
const DateTimeFormat = "20060102T15:04:05"

var dateTimeLayouts = []string{
	DateTimeFormat,
	"20060102T15:04:05Z07:00",
	"20060102T150405",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

type xmlMethodCall struct {
	XMLName    xml.Name   `xml:"methodCall"`
	MethodName string     `xml:"methodName"`
	Params     []xmlParam `xml:"params>param"`
}

type xmlMethodResponse struct {
	XMLName xml.Name   `xml:"methodResponse"`
	Params  []xmlParam `xml:"params>param"`
	Fault   *xmlParam  `xml:"fault"`
}

type xmlParam struct {
	Value xmlValue `xml:"value"`
}

type xmlValue struct {
	Int      *string    `xml:"int"`
	I4       *string    `xml:"i4"`
	I8       *string    `xml:"i8"`
	Boolean  *string    `xml:"boolean"`
	String   *string    `xml:"string"`
	Double   *string    `xml:"double"`
	DateTime *string    `xml:"dateTime.iso8601"`
	Base64   *string    `xml:"base64"`
	Struct   *xmlStruct `xml:"struct"`
	Array    *xmlArray  `xml:"array"`
	Nil      *struct{}  `xml:"nil"`
	Text     string     `xml:",chardata"`
}

type xmlStruct struct {
	Members []xmlMember `xml:"member"`
}

type xmlMember struct {
	Name  string   `xml:"name"`
	Value xmlValue `xml:"value"`
}

type xmlArray struct {
	Values []xmlValue `xml:"data>value"`
}

// Call is a decoded methodCall.
type Call struct {
	Method string
	Params []any
}

// DecodeCall parses a methodCall document. Values are mapped to int64, bool,
// string, float64, time.Time, []byte, map[string]any, []any or nil.
func DecodeCall(r io.Reader) (*Call, error) {
	var mc xmlMethodCall
	if err := xml.NewDecoder(r).Decode(&mc); err != nil {
		return nil, fmt.Errorf("decode methodCall: %w", err)
	}
	name := strings.TrimSpace(mc.MethodName)
	if name == "" {
		return nil, fmt.Errorf("decode methodCall: missing methodName")
	}
	params := make([]any, 0, len(mc.Params))
	for i, p := range mc.Params {
		v, err := p.Value.decode()
		if err != nil {
			return nil, fmt.Errorf("decode param %d: %w", i, err)
		}
		params = append(params, v)
	}
	return &Call{Method: name, Params: params}, nil
}

// DecodeResponse parses a methodResponse document. A fault response is
// returned as a *Fault error.
func DecodeResponse(r io.Reader) (any, error) {
	var mr xmlMethodResponse
	if err := xml.NewDecoder(r).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode methodResponse: %w", err)
	}
	if mr.Fault != nil {
		v, err := mr.Fault.Value.decode()
		if err != nil {
			return nil, fmt.Errorf("decode fault: %w", err)
		}
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode fault: expected struct, got %T", v)
		}
		f := &Fault{}
		if code, ok := m["faultCode"].(int64); ok {
			f.Code = int(code)
		}
		f.Message, _ = m["faultString"].(string)
		return nil, f
	}
	if len(mr.Params) == 0 {
		return nil, nil
	}
	return mr.Params[0].Value.decode()
}

func (v xmlValue) decode() (any, error) {
	switch {
	case v.Int != nil:
		return parseInt(*v.Int)
	case v.I4 != nil:
		return parseInt(*v.I4)
	case v.I8 != nil:
		return parseInt(*v.I8)
	case v.Boolean != nil:
		switch strings.TrimSpace(*v.Boolean) {
		case "1", "true":
			return true, nil
		case "0", "false":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", *v.Boolean)
	case v.String != nil:
		return *v.String, nil
	case v.Double != nil:
		f, err := strconv.ParseFloat(strings.TrimSpace(*v.Double), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid double %q: %w", *v.Double, err)
		}
		return f, nil
	case v.DateTime != nil:
		return ParseDateTime(*v.DateTime)
	case v.Base64 != nil:
		raw := strings.Join(strings.Fields(*v.Base64), "")
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return b, nil
	case v.Struct != nil:
		m := make(map[string]any, len(v.Struct.Members))
		for _, member := range v.Struct.Members {
			mv, err := member.Value.decode()
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", member.Name, err)
			}
			m[member.Name] = mv
		}
		return m, nil
	case v.Array != nil:
		arr := make([]any, 0, len(v.Array.Values))
		for i, item := range v.Array.Values {
			iv, err := item.decode()
			if err != nil {
				return nil, fmt.Errorf("array item %d: %w", i, err)
			}
			arr = append(arr, iv)
		}
		return arr, nil
	case v.Nil != nil:
		return nil, nil
	default:
		return v.Text, nil
	}
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int %q: %w", s, err)
	}
	return n, nil
}

// ParseDateTime accepts the compact and dashed iso8601 forms clients send.
// Values without a zone are read as UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateTime.iso8601 %q", s)
}
