package logging

import (
	"io"
	"strings"

	nested "github.com/antonfisher/nested-logrus-formatter"
	log "github.com/sirupsen/logrus"
)

// Init sets the global logrus formatter, level and output.
func Init(level string, out io.Writer) {
	log.SetFormatter(&nested.Formatter{
		HideKeys:        false,
		FieldsOrder:     []string{"module", "function", "request_id"},
		TimestampFormat: "2006-01-02 15:04:05",
		NoColors:        out != nil,
	})
	if out != nil {
		log.SetOutput(out)
	}
	log.SetLevel(ParseLevel(level))
}

// ParseLevel accepts logrus level names and falls back to info.
func ParseLevel(level string) log.Level {
	if level == "" {
		return log.InfoLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
