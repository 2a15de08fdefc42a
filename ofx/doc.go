/*
Package ofx decodes OFX responses returned by financial institutions.

OFX 1.x responses are SGML and routinely omit closing tags. The decoder reads the
key:value header, transcodes legacy charsets to UTF-8, rebuilds well formed XML from
the SGML body and unmarshals it into a Document. Callers normally only need Decoder,
which turns raw response bytes into a Response listing accounts and their statements.

*/
package ofx
