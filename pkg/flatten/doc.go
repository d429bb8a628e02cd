// Package flatten reshapes decoded Sportradar payloads into flat tables.
//
// A Table is an ordered list of column names plus rows keyed by column.
// Cell values are whatever the JSON decoder produced (string, float64, bool,
// nil, []any, map[string]any).
//
// Three building blocks cover the payload shapes the API returns:
//
//   - Normalize turns a list of objects into one row per object, joining
//     nested object keys with a separator ("sport_event.id"). Lists stay
//     as cell values.
//   - Explode replaces a list-valued column by one row per element,
//     normalizing object elements under the column name as prefix.
//   - Rules rename columns with an ordered list of prefix and substring
//     rewrites.
//
// # Basic Usage
//
//	payload, _ := agg.Aggregate(ctx, "seasons/sr:season:1/summaries", "summaries")
//
//	summaries, err := flatten.FromPayload(payload, "summaries")
//	if err != nil {
//		return err
//	}
//
//	teams, err := flatten.Explode(summaries, "statistics.totals.competitors", "sport_event.id")
//	if err != nil {
//		return err
//	}
//
//	rules := flatten.Rules{
//		flatten.Replace{Old: "statistics.totals.competitors.", New: "competitor."},
//		flatten.Replace{Old: ".", New: "_"},
//	}
//	teams, err = rules.Rename(teams)
//
// Missing columns or payload keys are reported as *LookupError, which
// matches ErrLookup through errors.Is.
package flatten
