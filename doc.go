// Package mdprep prepares annotated Markdown for publishing.
//
// # Quick Start
//
// For the Markdown rewrite alone, call Transform:
//
//	out, err := mdprep.Transform(markdown)
//
// To render HTML or PDF, create a Preparer and close it when done:
//
//	prep, err := mdprep.NewPreparer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer prep.Close()
//
//	result, err := prep.Prepare(ctx, mdprep.Input{
//	    Markdown: content,
//	    Format:   mdprep.FormatPDF,
//	})
//
// # Passes
//
// The Markdown rewrite runs these passes in order:
//
//  1. Preprocessing (line endings, stale anchors, tabs)
//  2. Notes: original definitions and inline <<label|text>> markers become one
//     numbered list; references with identical text share a number
//  3. Contents: every "## Contents" section receives a linked outline
//  4. Anchors: each heading gets a unique <a id=...></a> anchor
//  5. Links: inline link labels are made bold
//  6. Index: <<Index: term|term>> markers are collected into "## Index"
//
// Running Transform on its own output returns the same output.
//
// # Configuration
//
//	prep, err := mdprep.NewPreparer(
//	    mdprep.WithIndexSort(mdprep.SortLocale),
//	    mdprep.WithCollationLanguage("sv"),
//	    mdprep.WithLogger(logger),
//	)
//
// # Parallel Processing
//
// For batch work, PreparerPool hands out Preparers that each own their browser:
//
//	pool, err := mdprep.NewPreparerPool(mdprep.ResolvePoolSize(0))
//	defer pool.Close()
//
//	prep := pool.Acquire()
//	defer pool.Release(prep)
package mdprep
