// Package pagination provides the pure page arithmetic used by the fetch
// controller.
//
// The remote service returns its whole collection in one response, so
// pagination happens entirely client side: a fixed page size is laid over the
// in-memory result set and a page index selects the visible window.
//
// Example usage:
//
//	page := pagination.Slice(records, 1, 3)
//	fmt.Printf("page %d/%d\n", page.Index+1, page.TotalPages)
//	for _, r := range page.Items {
//		fmt.Println(r.Name)
//	}
//
// Properties:
//   - TotalPages is 0 for an empty set, otherwise ceil(n/size)
//   - every page holds exactly size items except possibly the last one
//   - an out-of-range index yields an empty page instead of panicking
//   - identical inputs always produce an identical page
package pagination
