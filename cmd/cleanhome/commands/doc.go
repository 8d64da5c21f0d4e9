// Package commands defines the cleanhome operator CLI.
//
// Commands
//
//   - regions      List cities
//   - districts    List the districts of a city
//   - wards        List the wards of a district with their positional IDs
//   - format       Render a selection as a canonical address line
//   - decode       Decode a payment-gateway return URL or query string
//
// The root command loads the address catalog once before any subcommand runs:
// the embedded table by default, or a JSON file given with --catalog.
package commands
