// Package loader reads API specification documents from disk.
//
// The loader picks a decoder from the text after the final '.' of the path and
// deserializes the file into generic Go values: map[string]any for mappings,
// []any for sequences, and scalars. No OpenAPI schema is enforced; a document
// that deserializes is a document.
//
// # Failures as data
//
// The documented failure classes never surface as Go errors. They are stored on
// the returned [Document] and rendered by [Document.Record] as a single-key
// mapping {"error": message}, where message is one of:
//
//	"ValueError, path cannot be of None type"   empty path
//	"File Not Found"                            path is not an existing regular file
//	"Invalid file extension"                    no decoder registered for the extension
//	"JSON error"                                malformed JSON content
//	"YAML error"                                malformed or unsafe YAML content
//
// The error result of [Loader.Load] is reserved for conditions outside that
// contract: open or read failures, content that is not UTF-8, and files larger
// than the configured limit.
//
// # Safe YAML
//
// YAML content is parsed to a node tree first. Only the core schema tags are
// accepted; any other tag, including language-specific object constructors,
// makes the document malformed. Multi-document streams are rejected.
//
// # Registry
//
// json and yaml are registered by default. Further formats are added with
// [WithDecoder] or [Loader.Register]:
//
//	l, err := loader.New(loader.WithDecoder("yml", loader.YAMLDecoder))
package loader
