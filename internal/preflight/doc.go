// Package preflight provides readiness checks behind `shelfscan doctor`.
//
// Local checks cover the data and log directories and the settings file.
// Remote checks probe OpenBD and, when settings are valid, confirm the Notion
// token and database. Each check returns a Result rather than an error so a
// report can list every problem at once.
package preflight
