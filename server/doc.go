// Package server exposes the matching engine over HTTP: quiz
// evaluation, catalog upload with hot reload, catalog statistics and
// upload history.
package server
