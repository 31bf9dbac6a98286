package templates

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/labgenie/internal/util"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatDateTime(t time.Time) string {
	return util.FormatDateTime(t)
}

func procedureLines(s string) []string {
	return strings.Split(s, "\n")
}

func recordURL(id int64) templ.SafeURL {
	return templ.SafeURL("/record/" + formatID(id))
}

func exportURL(id int64, format string) templ.SafeURL {
	return templ.SafeURL("/export/" + formatID(id) + "/" + format)
}
