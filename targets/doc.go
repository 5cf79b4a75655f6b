// Package targets turns a loaded specification document into the list of
// request targets a test run would exercise: one entry per usable server, path
// and operation.
//
// Servers are discovered from the document (OpenAPI 3 "servers", Swagger 2
// "schemes", "host" and "basePath") unless an override is configured. Servers
// that do not parse are logged and reported in Plan.Skipped; they never abort
// planning.
//
//	doc, err := loader.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p, _ := targets.New(targets.WithLogger(logger))
//	plan, err := p.Plan(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, t := range plan.Targets {
//		fmt.Println(strings.ToUpper(t.Method), t.URL)
//	}
package targets
