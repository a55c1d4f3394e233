package schedule

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var rawSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource("schedule.schema.json", strings.NewReader(rawSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("schedule.schema.json")
	})
	return schema, schemaErr
}

// FieldError is a validation error tied to one location in the schedule
// file.
type FieldError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseError reports a schedule file that could not be read or failed
// validation. Errs holds every individual field error so a bad file can
// be fixed in one pass.
type ParseError struct {
	Path   string
	Reason string
	Errs   []error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	if len(e.Errs) == 0 {
		return msg
	}
	lines := make([]string, 0, len(e.Errs)+1)
	lines = append(lines, msg+":")
	for _, err := range e.Errs {
		lines = append(lines, "  - "+err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the individual field errors to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	return e.Errs
}

// scheduleFile is the wire representation of a schedule.
type scheduleFile struct {
	Date  string `json:"date"`
	Tasks []Task `json:"tasks"`
}

// Load reads, validates, and constructs a schedule from a JSON file.
// Structural and field-level checks run against the embedded JSON Schema
// first; the cross-field end>start and duplicate-ID checks run only on a
// structurally valid document. All failures come back as one ParseError.
func Load(path string) (*Schedule, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &ParseError{Path: path, Reason: "schedule file not found"}
	}
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "stat schedule file", Errs: []error{err}}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Reason: "path is not a regular file"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "read schedule file", Errs: []error{err}}
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid JSON", Errs: []error{err}}
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "compile schedule schema", Errs: []error{err}}
	}
	if err := sch.Validate(raw); err != nil {
		perr := &ParseError{Path: path, Reason: "schedule validation failed"}
		appendSchemaErrors(perr, err)
		return nil, perr
	}

	var f scheduleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Path: path, Reason: "parse schedule file", Errs: []error{err}}
	}

	date, err := time.ParseInLocation(DateFormat, f.Date, time.Local)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "schedule validation failed", Errs: []error{
			&FieldError{Path: "date", Err: fmt.Errorf("invalid date %q, expected YYYY-MM-DD", f.Date)},
		}}
	}

	s, err := New(date, f.Tasks)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Save writes the schedule back to a JSON file, creating parent
// directories as needed. The write is atomic: the file is either the old
// content or the new one, never a partial write.
func Save(s *Schedule, path string) error {
	f := scheduleFile{Date: s.DateString(), Tasks: s.Tasks}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return &ParseError{Path: path, Reason: "marshal schedule", Errs: []error{err}}
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ParseError{Path: path, Reason: "create schedule directory", Errs: []error{err}}
		}
	}
	if err := writeFileAtomic(path, data); err != nil {
		return &ParseError{Path: path, Reason: "write schedule file", Errs: []error{err}}
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename so readers never see
// a half-written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func appendSchemaErrors(perr *ParseError, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		perr.Errs = append(perr.Errs, err)
		return
	}
	collectSchemaErrors(perr, ve)
}

// collectSchemaErrors flattens the nested cause tree into flat field
// errors, one per leaf violation.
func collectSchemaErrors(perr *ParseError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		perr.Errs = append(perr.Errs, &FieldError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(perr, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
