package ofx

import "regexp"

type fixup struct {
	from *regexp.Regexp
	to   []byte
}

// fixups restore account aggregates some institutions drop from statement responses.
var fixups = []fixup{
	{regexp.MustCompile(`(</CURDEF>\s+)(<BANKID>)`), []byte("$1<BANKACCTFROM>$2")},
	{regexp.MustCompile(`(</CURDEF>\s+)(<ACCTID>)`), []byte("$1<CCACCTFROM>$2")},
}

// preprocessOFXData applies one-off transforms to fix bad data.
// This should not be required as the library matures.
func preprocessOFXData(content []byte) []byte {
	for _, f := range fixups {
		content = f.from.ReplaceAll(content, f.to)
	}
	return content
}
