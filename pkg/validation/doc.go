// Package validation runs the structural rules of every flow object in a process
// definition and collects the findings.
//
// Validation is exhaustive: every flow object is checked and every defect is
// reported, so that a malformed definition can be fixed in one pass.
//
//	queue, err := validation.Validate(ctx, def, registry.Default())
//	if err != nil {
//	    // unknown kinds or cancellation
//	}
//	for _, e := range queue.Sorted() {
//	    fmt.Println(e.Code, e.Message)
//	}
package validation
