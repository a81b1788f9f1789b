// Package bookinfo resolves ISBNs to book metadata through the OpenBD API.
//
// OpenBD answers with an array holding either null (no record) or a record
// that may carry a flat summary, an ONIX structure, or both. The parser reads
// summary fields first and fills gaps from ONIX. A missing record is a normal
// nil result; transport failures are tagged with the services network,
// timeout, or server markers.
package bookinfo
