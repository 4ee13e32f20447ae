package xmlrpc

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

var (
	timeType  = reflect.TypeOf(time.Time{})
	bytesType = reflect.TypeOf([]byte(nil))
)

// EncodeResponse writes a successful methodResponse carrying v.
//
// Structs are encoded member by member using `xmlrpc:"name,omitempty"` tags;
// omitempty only drops nil pointers, slices, maps and interfaces so that empty
// lists still reach the client as empty arrays.
func EncodeResponse(w io.Writer, v any) error {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString("<methodResponse><params><param><value>")
	if err := encodeValue(&buf, reflect.ValueOf(v)); err != nil {
		return err
	}
	buf.WriteString("</value></param></params></methodResponse>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeFault writes a fault methodResponse.
func EncodeFault(w io.Writer, f *Fault) error {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString("<methodResponse><fault><value>")
	if err := encodeValue(&buf, reflect.ValueOf(*f)); err != nil {
		return err
	}
	buf.WriteString("</value></fault></methodResponse>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeCall writes a methodCall document.
func EncodeCall(w io.Writer, method string, params ...any) error {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	buf.WriteString("<methodCall><methodName>")
	if err := xml.EscapeText(&buf, []byte(method)); err != nil {
		return err
	}
	buf.WriteString("</methodName><params>")
	for i, p := range params {
		buf.WriteString("<param><value>")
		if err := encodeValue(&buf, reflect.ValueOf(p)); err != nil {
			return fmt.Errorf("param %d: %w", i, err)
		}
		buf.WriteString("</value></param>")
	}
	buf.WriteString("</params></methodCall>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func encodeValue(buf *bytes.Buffer, v reflect.Value) error {
	if !v.IsValid() {
		buf.WriteString("<nil/>")
		return nil
	}
	if v.Type() == timeType {
		buf.WriteString("<dateTime.iso8601>")
		buf.WriteString(v.Interface().(time.Time).Format(DateTimeFormat))
		buf.WriteString("</dateTime.iso8601>")
		return nil
	}
	if v.Type() == bytesType {
		buf.WriteString("<base64>")
		buf.WriteString(base64.StdEncoding.EncodeToString(v.Bytes()))
		buf.WriteString("</base64>")
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			buf.WriteString("<nil/>")
			return nil
		}
		return encodeValue(buf, v.Elem())
	case reflect.Bool:
		if v.Bool() {
			buf.WriteString("<boolean>1</boolean>")
		} else {
			buf.WriteString("<boolean>0</boolean>")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
		buf.WriteString("</int>")
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString("<int>")
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
		buf.WriteString("</int>")
	case reflect.Float32, reflect.Float64:
		buf.WriteString("<double>")
		buf.WriteString(strconv.FormatFloat(v.Float(), 'f', -1, 64))
		buf.WriteString("</double>")
	case reflect.String:
		buf.WriteString("<string>")
		if err := xml.EscapeText(buf, []byte(v.String())); err != nil {
			return err
		}
		buf.WriteString("</string>")
	case reflect.Slice, reflect.Array:
		buf.WriteString("<array><data>")
		for i := 0; i < v.Len(); i++ {
			buf.WriteString("<value>")
			if err := encodeValue(buf, v.Index(i)); err != nil {
				return err
			}
			buf.WriteString("</value>")
		}
		buf.WriteString("</data></array>")
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		buf.WriteString("<struct>")
		for _, k := range keys {
			mv := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
			if err := encodeMember(buf, k, mv); err != nil {
				return err
			}
		}
		buf.WriteString("</struct>")
	case reflect.Struct:
		return encodeStruct(buf, v)
	default:
		return fmt.Errorf("unsupported type %s", v.Type())
	}
	return nil
}

func encodeStruct(buf *bytes.Buffer, v reflect.Value) error {
	t := v.Type()
	buf.WriteString("<struct>")
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty := parseTag(field)
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && isNilValue(fv) {
			continue
		}
		if err := encodeMember(buf, name, fv); err != nil {
			return err
		}
	}
	buf.WriteString("</struct>")
	return nil
}

func encodeMember(buf *bytes.Buffer, name string, v reflect.Value) error {
	buf.WriteString("<member><name>")
	if err := xml.EscapeText(buf, []byte(name)); err != nil {
		return err
	}
	buf.WriteString("</name><value>")
	if err := encodeValue(buf, v); err != nil {
		return fmt.Errorf("member %q: %w", name, err)
	}
	buf.WriteString("</value></member>")
	return nil
}

func parseTag(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("xmlrpc")
	if tag == "" {
		return field.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, opts == "omitempty"
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}
