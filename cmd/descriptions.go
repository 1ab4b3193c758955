package cmd

const DESCRIPTION = `
Flask-Unsign is a penetration testing utility that attempts to uncover a
Flask server's secret key by taking a signed session cookie and verifying
it against a wordlist of commonly used and publicly known secret keys. To
begin, use one of the following commands: decode, sign, unsign.
`

const (
	DecodeDescription = `The decode command parses a session cookie and prints its
payload without needing the secret key. The cookie can come
from the --cookie argument, from stdin, from a remote server
(--server) or from a local browser cookie store
(--browser-store).

Example:
        flask-unsign decode --cookie 'eyJsb2dnZWRfaW4iOmZhbHNlfQ.XDuWxQ.E2Pyb6x3w-NODuflHoGnZOEpbH8'

`
	SignDescription = `The sign command forges a new session cookie from a JSON
value and a known secret key, often used for session
manipulation after the key has been uncovered.

Example:
        flask-unsign sign --cookie '{"logged_in": true}' --secret 'CHANGEME'

`
	UnsignDescription = `The unsign command brute-forces the secret key behind a
session cookie by verifying it against every candidate in a
wordlist. Candidates are split across worker goroutines in
chunks; the first match wins and cancels the rest.

Example:
        flask-unsign unsign --wordlist wordlist.txt --cookie '<cookie>'

`
)
