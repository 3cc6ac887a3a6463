// Package errors provides structured, coded errors for vxml.
//
// Every failure the library and its tools can report has a registered code
// (e.g., "X001") that maps to:
//   - A category (build, render, document, config, cli)
//   - A short message
//   - A longer explanation and a documentation URL
//
// # Usage
//
//	err := errors.New(errors.CodeDocumentShape).
//	    WithLocation("page.yaml", 4, 7).
//	    WithSuggestion("Element mappings need a string 'tag' key")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR X011: Invalid document structure
//	//
//	//   page.yaml:4:7
//	//
//	//      3 │ children:
//	//   →  4 │   - attrs: {x: 1}
//	//        │         ^
//	//      5 │     children: []
//	//
//	//   Hint: Element mappings need a string 'tag' key
//
// Errors compare by code, so a freshly built error matches the exported
// sentinels of the public packages:
//
//	errors.Is(err, render.ErrInvalidNode)
package errors
