// Package sdkpath validates and auto-detects the XCOM 2 War of the Chosen
// game and SDK install paths.
//
// Operations return [notify.Notice] values instead of printing. [Validate]
// and [Guess] hand those notices to a [notify.Notifier] and feed the user's
// selection back into detection.
package sdkpath
