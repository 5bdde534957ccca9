// Package record provides the typed payload model for clashgo.
//
// The Clash of Clans API returns nested JSON objects whose fields are all
// optional in practice: leaderboard payloads omit fields the full profile
// endpoints carry, versus rankings omit the regular trophy fields, and so
// on. Package record models a decoded payload as a Record with explicit
// get-or-absent semantics so that model constructors never have to guess
// whether a zero value is real.
//
// # Values
//
// Record fields are typed Values:
//
//   - String: record.String("Reddit")
//   - Int: record.Int(48910)
//   - Float: record.Float(0.5)
//   - Bool: record.Bool(true)
//   - Rec: record.Rec(record.Record{...})
//   - Array: record.Array([]record.Value{...})
//
// A missing key, an explicit JSON null and a kind mismatch are all reported
// the same way: the field is absent. Accessors never fail.
//
// # Decoding
//
// Decode parses an API response body:
//
//	rec, err := record.Decode(body)
//	if err != nil {
//	    return err
//	}
//	points, ok := rec.GetInt("clanPoints") // ok=false when the field is absent
//
// Numbers decode through json.Number, so integer fields such as trophy
// counts and ranks stay exact instead of round-tripping through float64.
package record
