// Package homescout provides a crawler for paginated real-estate search
// sites. It extracts canonical listing records from pages whose markup and
// embedded-data schema drift over time, follows result pages without being
// told a page count, and guarantees each logical listing is emitted at most
// once per crawl run.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package homescout
