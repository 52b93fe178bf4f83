/*
Package filtering matches records against the AWS event-filtering syntax
(https://docs.aws.amazon.com/lambda/latest/dg/invocation-eventfiltering.html#filtering-syntax).

A Filter is a list of patterns; a record matches the filter when it matches
any pattern, and matches a pattern when every field in the pattern matches at
least one of its criteria. Criteria are exact scalar values or one of the
operator documents:

	{"anything-but": ["a", "b"]}
	{"numeric": [">", 0, "<=", 100]}
	{"exists": true}
	{"prefix": "eu-"}

Pattern fields may nest to address values inside nested objects. An empty
filter matches every record. A malformed criterion is reported as an error,
never treated as a silent non-match.
*/
package filtering
