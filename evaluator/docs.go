// ==============================================================================================
// FILE: evaluator/docs.go
// ==============================================================================================
// PACKAGE: evaluator
// PURPOSE: Embedded help text backing the `help` built-in (§4.4).
// ==============================================================================================

package evaluator

import "embed"

//go:embed docs/user.txt docs/dev.txt
var docsFS embed.FS

// docTopic maps every recognized topic spelling to its backing file. An
// unrecognized topic falls back to the user guide (§9 open question).
var docTopic = map[string]string{
	"user": "docs/user.txt",
	"help": "docs/user.txt",
	"dev":  "docs/dev.txt",
	"developer": "docs/dev.txt",
}

// lookupDoc returns the help text for topic, falling back to the user guide
// for unknown topics and returning a literal placeholder if the backing file
// is somehow missing.
func lookupDoc(topic string) string {
	path, ok := docTopic[topic]
	if !ok {
		path = docTopic["user"]
	}
	data, err := docsFS.ReadFile(path)
	if err != nil {
		return "Documentation not found"
	}
	return string(data)
}
