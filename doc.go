// Package offat normalizes the inputs of an OpenAPI test run: specification
// documents, declared server URLs and the request URLs composed from them.
//
// The work is split across small packages, leaves first:
//
//   - loader: read a .json or .yaml file into a generic document, or report
//     a typed load failure
//   - serverurl: split a server URL into scheme, host, port and base path
//   - urlutil: join a base URL with path segments and check whether a string
//     looks like an http(s) URL
//   - targets: combine the above into the list of request targets
//
// Diagnostics go through the logging.Logger interface and errors can be
// matched with the sentinels in oaserrors.
//
// # Quick Start
//
//	doc, err := loader.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if doc.Failed() {
//		log.Fatal(doc.Err.Message())
//	}
//
//	s, err := serverurl.Parse("https://api.example.com/v1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	u, _ := urlutil.Join(s.Origin(), s.BasePath, "/pets")
//	fmt.Println(u) // https://api.example.com:443/v1/pets
//
// The offat command exposes the same operations on the command line and as
// MCP tools (offat mcp).
package offat
