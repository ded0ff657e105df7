// Package pagination adds page/limit pagination to echo list endpoints.
//
// A Paginator is registered once per echo instance:
//
//	p, err := pagination.New(pagination.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	if err := p.Register(e); err != nil {
//		return err
//	}
//
// Before a paginated GET handler runs, page, limit and the pagination flag
// are resolved and written back into the query the handler sees. After it
// returns, the JSON result is rewritten either into an envelope holding the
// metadata and the results, or into a bare array with Link and
// Content-Range headers. Handlers report the overall item count with
// SetTotalCount, a totalCount field on an object result, or Reply.
package pagination
