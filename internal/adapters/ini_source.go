package adapters

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/ini.v1"

	"pnc-buildconfig/internal/ports"
	"pnc-buildconfig/internal/store"
	"pnc-buildconfig/internal/types"
)

// iniLoadOptions mirror the ConfigParser dialect the build configurations
// are written in: case-insensitive option names, indented continuation
// lines, no inline comments (scm urls carry '#'), quotes kept verbatim and
// repeated section headers reported instead of merged. Blank and comment
// lines are removed by foldContinuations before the text reaches ini.
var iniLoadOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreContinuation:         true,
	IgnoreInlineComment:        true,
	AllowPythonMultilineValues: true,
	PreserveSurroundedQuote:    true,
	AllowNonUniqueSections:     true,
	KeyValueDelimiters:         "=:",
}

type IniSourceAdapter struct {
	FS    billy.Filesystem
	Cache *ParserCache
}

func NewIniSourceAdapter() IniSourceAdapter {
	return NewIniSourceAdapterWithFS(osfs.New("/"))
}

func NewIniSourceAdapterWithFS(fs billy.Filesystem) IniSourceAdapter {
	return IniSourceAdapter{FS: fs, Cache: NewParserCache()}
}

func (a IniSourceAdapter) Load(path string) (*store.Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid config file path").
			WithCause(err)
	}
	if a.Cache != nil {
		if st, ok := a.Cache.Get(abs); ok {
			return st, nil
		}
	}
	data, err := util.ReadFile(a.FS, abs)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("config file " + path + " not found").
			WithCause(err)
	}
	st, err := ParseINI(data)
	if err != nil {
		return nil, err
	}
	if a.Cache != nil {
		a.Cache.Put(abs, st)
	}
	return st, nil
}

// ParseINI loads configuration text into a store. Values are stored raw;
// interpolation problems surface when they are read.
func ParseINI(data []byte) (*store.Store, error) {
	folded, err := foldContinuations(data)
	if err != nil {
		return nil, err
	}
	file, err := ini.LoadSources(iniLoadOptions, folded)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse config file").
			WithCause(err)
	}
	st := store.New()
	for _, section := range file.Sections() {
		name := section.Name()
		if name != ini.DefaultSection {
			if err := st.AddSection(name); err != nil {
				return nil, err
			}
		}
		for _, key := range section.Keys() {
			if err := st.SetRaw(name, key.Name(), trimContinuation(key.Value())); err != nil {
				return nil, err
			}
		}
	}
	return st, nil
}

// foldContinuations drops blank lines and lines starting with '#' or ';' so
// they never end a multiline value, and rejects content that appears before
// the first section header.
func foldContinuations(data []byte) ([]byte, error) {
	var out bytes.Buffer
	sawSection := false
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if !sawSection {
			if line[0] != '[' {
				return nil, types.NewConfigError(types.ErrMissingSectionHeader, "", "",
					"line %d appears before any section header", i+1).WithValue(line)
			}
			sawSection = true
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

// trimContinuation strips the indentation of every continuation line.
func trimContinuation(value string) string {
	if !strings.Contains(value, "\n") {
		return value
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

var _ ports.ConfigSourcePort = IniSourceAdapter{}
