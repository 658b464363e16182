// Command matchctl scores lost and found descriptions offline with the same
// engine the HTTP service uses.
package main
