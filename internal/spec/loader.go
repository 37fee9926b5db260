package spec

import (
    "context"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "os"
    "path/filepath"
    "strings"
    "time"

    openapi2 "github.com/getkin/kin-openapi/openapi2"
    "github.com/getkin/kin-openapi/openapi2conv"
    "github.com/getkin/kin-openapi/openapi3"
    "gopkg.in/yaml.v3"
)

// ErrorCode categorizes loader errors for clearer handling and messaging.
type ErrorCode string

const (
    InputError   ErrorCode = "InputError"
    FetchError   ErrorCode = "FetchError"
    ReadError    ErrorCode = "ReadError"
    ParseError   ErrorCode = "ParseError"
    ConvertError ErrorCode = "ConvertError"
)

// SpecError is a structured error with an optional source location.
type SpecError struct {
    Code     ErrorCode
    Message  string
    Location string // file path or URL
    Cause    error
}

func (e *SpecError) Error() string { return e.Message }
func (e *SpecError) Unwrap() error { return e.Cause }

// Settings configures loader behavior.
type Settings struct {
    // HTTPTimeout bounds each HTTP request.
    HTTPTimeout time.Duration
    // MaxRetries for transient HTTP failures (>=500, 429, or network errors).
    MaxRetries int
    // BackoffBase is the base delay for exponential backoff.
    BackoffBase time.Duration
}

// DefaultSettings returns recommended defaults.
func DefaultSettings() Settings {
    return Settings{
        HTTPTimeout: 30 * time.Second,
        MaxRetries:  3,
        BackoffBase: 200 * time.Millisecond,
    }
}

// Option mutates Settings.
type Option func(*Settings)

func WithHTTPTimeout(d time.Duration) Option { return func(s *Settings) { s.HTTPTimeout = d } }
func WithMaxRetries(n int) Option            { return func(s *Settings) { s.MaxRetries = n } }
func WithBackoffBase(d time.Duration) Option { return func(s *Settings) { s.BackoffBase = d } }

// Load obtains an OpenAPI document from an http/https URL or a local file
// path and returns the parsed v3 document together with the raw bytes it
// was parsed from. Swagger v2.0 inputs are converted to v3 via kin-openapi
// openapi2conv. The document is not validated here; the validate command
// runs full validation separately.
func Load(ctx context.Context, input string, opts ...Option) (*openapi3.T, []byte, error) {
    if strings.TrimSpace(input) == "" {
        return nil, nil, &SpecError{Code: InputError, Message: "spec: input is empty"}
    }

    settings := DefaultSettings()
    for _, opt := range opts {
        opt(&settings)
    }

    // Classify input as URL or file path.
    u, uerr := url.Parse(input)
    isURL := uerr == nil && u.Scheme != "" && u.Host != ""

    var raw []byte
    location := input
    if isURL {
        scheme := strings.ToLower(u.Scheme)
        if scheme == "file" {
            return nil, nil, &SpecError{Code: InputError, Message: "spec: file:// URLs are not supported, pass a plain path", Location: input}
        }
        if scheme != "http" && scheme != "https" {
            return nil, nil, &SpecError{Code: InputError, Message: fmt.Sprintf("spec: unsupported URL scheme %q (only http/https allowed)", scheme), Location: input}
        }
        fetched, fetchErr := fetchWithRetry(ctx, input, settings)
        if fetchErr != nil {
            return nil, nil, &SpecError{Code: FetchError, Message: fmt.Sprintf("fetch %s: %v", input, fetchErr), Location: input, Cause: fetchErr}
        }
        raw = fetched
    } else {
        abs, err := filepath.Abs(input)
        if err != nil {
            return nil, nil, &SpecError{Code: InputError, Message: fmt.Sprintf("resolve path: %v", err), Location: input, Cause: err}
        }
        location = abs
        data, rerr := os.ReadFile(abs)
        if rerr != nil {
            return nil, nil, &SpecError{Code: ReadError, Message: fmt.Sprintf("read file %s: %v", abs, rerr), Location: abs, Cause: rerr}
        }
        raw = data
    }

    version, derr := detectSpecVersion(raw)
    if derr != nil {
        return nil, nil, &SpecError{Code: ParseError, Message: derr.Error(), Location: location, Cause: derr}
    }

    switch version {
    case 3:
        loader := openapi3.NewLoader()
        doc, err := loader.LoadFromData(raw)
        if err != nil {
            return nil, nil, &SpecError{Code: ParseError, Message: fmt.Sprintf("parse spec: %v", err), Location: location, Cause: err}
        }
        return doc, raw, nil
    case 2:
        v3doc, err := convertV2ToV3(raw)
        if err != nil {
            return nil, nil, &SpecError{Code: ConvertError, Message: fmt.Sprintf("convert v2->v3: %v", err), Location: location, Cause: err}
        }
        return v3doc, raw, nil
    default:
        return nil, nil, &SpecError{Code: ParseError, Message: "spec: unknown or unsupported OpenAPI/Swagger version", Location: location}
    }
}

// detectSpecVersion returns 3 for OpenAPI v3, 2 for Swagger v2. Documents
// without a version marker are treated as v3; field access downstream is
// best-effort anyway.
func detectSpecVersion(data []byte) (int, error) {
    var root map[string]any
    if err := yaml.Unmarshal(data, &root); err != nil {
        return 0, fmt.Errorf("parse spec: %w", err)
    }
    if root == nil {
        return 0, fmt.Errorf("parse spec: document is not an object")
    }
    if v, ok := root["swagger"]; ok {
        if s, _ := v.(string); strings.HasPrefix(strings.TrimSpace(s), "2.") {
            return 2, nil
        }
    }
    return 3, nil
}

func convertV2ToV3(data []byte) (*openapi3.T, error) {
    var v2 openapi2.T
    if err := yaml.Unmarshal(data, &v2); err != nil {
        return nil, err
    }
    return openapi2conv.ToV3(&v2)
}

func fetchWithRetry(ctx context.Context, rawURL string, settings Settings) ([]byte, error) {
    client := &http.Client{Timeout: settings.HTTPTimeout}
    var lastErr error
    backoff := settings.BackoffBase
    if backoff <= 0 {
        backoff = 200 * time.Millisecond
    }
    attempts := settings.MaxRetries
    if attempts <= 0 {
        attempts = 1
    }
    for i := 0; i < attempts; i++ {
        req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
        if err != nil {
            return nil, err
        }
        resp, err := client.Do(req)
        if err == nil && resp != nil && resp.StatusCode < 300 {
            defer resp.Body.Close()
            return io.ReadAll(resp.Body)
        }
        if err != nil {
            lastErr = err
        } else {
            defer resp.Body.Close()
            if resp.StatusCode >= 500 || resp.StatusCode == 429 {
                lastErr = fmt.Errorf("transient http error %d", resp.StatusCode)
            } else {
                body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
                return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
            }
        }
        select {
        case <-ctx.Done():
            return nil, ctx.Err()
        case <-time.After(backoff):
        }
        backoff *= 2
    }
    if lastErr == nil {
        lastErr = errors.New("fetch failed")
    }
    return nil, lastErr
}
