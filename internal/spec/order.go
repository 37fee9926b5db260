package spec

import (
    "bytes"
    "encoding/json"
    "fmt"
)

// orderIndex records the member order of the source document: the key order
// of components.schemas (or Swagger v2 definitions) and, per schema, the key
// order of its properties object. Neither kin-openapi nor yaml.v3 preserve
// object member order (both decode into Go maps), so the order is recovered
// with a token-level pass over the raw JSON.
type orderIndex struct {
    schemas    []string
    properties map[string][]string
}

// scanOrder walks the raw document with a streaming decoder. It only
// descends into components/schemas (and definitions); everything else is
// skipped. Non-JSON input (e.g. YAML) fails the scan and callers fall back
// to sorted order.
func scanOrder(raw []byte) (*orderIndex, error) {
    dec := json.NewDecoder(bytes.NewReader(raw))
    idx := &orderIndex{properties: make(map[string][]string)}

    if err := expectDelim(dec, '{'); err != nil {
        return nil, err
    }
    for dec.More() {
        key, err := readKey(dec)
        if err != nil {
            return nil, err
        }
        switch key {
        case "components":
            if err := scanComponents(dec, idx); err != nil {
                return nil, err
            }
        case "definitions":
            if err := scanSchemas(dec, idx); err != nil {
                return nil, err
            }
        default:
            if err := skipValue(dec); err != nil {
                return nil, err
            }
        }
    }
    return idx, nil
}

func scanComponents(dec *json.Decoder, idx *orderIndex) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    d, ok := tok.(json.Delim)
    if !ok {
        return nil // scalar components entry; nothing to record
    }
    if d != '{' {
        return skipBalanced(dec, 1)
    }
    for dec.More() {
        key, err := readKey(dec)
        if err != nil {
            return err
        }
        if key == "schemas" {
            if err := scanSchemas(dec, idx); err != nil {
                return err
            }
            continue
        }
        if err := skipValue(dec); err != nil {
            return err
        }
    }
    _, err = dec.Token() // closing brace
    return err
}

func scanSchemas(dec *json.Decoder, idx *orderIndex) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    d, ok := tok.(json.Delim)
    if !ok {
        return nil
    }
    if d != '{' {
        return skipBalanced(dec, 1)
    }
    for dec.More() {
        name, err := readKey(dec)
        if err != nil {
            return err
        }
        idx.schemas = append(idx.schemas, name)
        if err := scanSchemaObject(dec, idx, name); err != nil {
            return err
        }
    }
    _, err = dec.Token()
    return err
}

func scanSchemaObject(dec *json.Decoder, idx *orderIndex, name string) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    d, ok := tok.(json.Delim)
    if !ok {
        return nil
    }
    if d != '{' {
        return skipBalanced(dec, 1)
    }
    for dec.More() {
        key, err := readKey(dec)
        if err != nil {
            return err
        }
        if key == "properties" {
            if err := scanPropertyKeys(dec, idx, name); err != nil {
                return err
            }
            continue
        }
        if err := skipValue(dec); err != nil {
            return err
        }
    }
    _, err = dec.Token()
    return err
}

func scanPropertyKeys(dec *json.Decoder, idx *orderIndex, name string) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    d, ok := tok.(json.Delim)
    if !ok {
        return nil
    }
    if d != '{' {
        return skipBalanced(dec, 1)
    }
    for dec.More() {
        prop, err := readKey(dec)
        if err != nil {
            return err
        }
        idx.properties[name] = append(idx.properties[name], prop)
        if err := skipValue(dec); err != nil {
            return err
        }
    }
    _, err = dec.Token()
    return err
}

func readKey(dec *json.Decoder) (string, error) {
    tok, err := dec.Token()
    if err != nil {
        return "", err
    }
    s, ok := tok.(string)
    if !ok {
        return "", fmt.Errorf("expected object key, got %v", tok)
    }
    return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    if d, ok := tok.(json.Delim); !ok || d != want {
        return fmt.Errorf("expected %q, got %v", want, tok)
    }
    return nil
}

// skipValue consumes one value of any shape.
func skipValue(dec *json.Decoder) error {
    tok, err := dec.Token()
    if err != nil {
        return err
    }
    if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
        return skipBalanced(dec, 1)
    }
    return nil
}

// skipBalanced consumes tokens until depth open delimiters have been closed.
func skipBalanced(dec *json.Decoder, depth int) error {
    for depth > 0 {
        tok, err := dec.Token()
        if err != nil {
            return err
        }
        if d, ok := tok.(json.Delim); ok {
            switch d {
            case '{', '[':
                depth++
            case '}', ']':
                depth--
            }
        }
    }
    return nil
}
