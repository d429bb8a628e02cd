// Package pagination reassembles paginated Sportradar responses.
//
// Sportradar reports pagination through two response headers: X-Result (the
// number of records on the current page) and X-Max-Results (the total number
// of records). An endpoint without those headers is not paginated. This
// package reads them into an explicit Pagination value and, for paginated
// endpoints, keeps requesting offset windows until the total is covered,
// appending every page's collection list to the first page's body.
//
// Example usage:
//
//	aggregator := pagination.NewAggregator(sportradarClient, logger)
//	payload, err := aggregator.Aggregate(ctx, "seasons/sr:season:77453/summaries", "summaries")
//
// The aggregator:
//   - Fetches the first page without offset/limit
//   - Returns single-page responses unchanged (no second request)
//   - Steps the offset by the first page's X-Result until X-Max-Results
//   - Appends pages in fetch order, without de-duplication
//   - Aborts on the first failing page and returns no partial data
//
// Pages are fetched sequentially; the client waits its request delay before
// each one.
package pagination
