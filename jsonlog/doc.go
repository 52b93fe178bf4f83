/*
Package jsonlog emits one JSON object per log event.

Every event carries the application and environment of its logger, a level,
an RFC3339 timestamp and a message, plus any caller-supplied fields under
"extra":

	{"logger":{"application":"ingest","environment":"prod"},
	 "level":"info","timestamp":"2025-05-01T10:00:00.000Z",
	 "message":"partition written","extra":{"rows":1200}}

Measure wraps a function call, timing it and sampling memory, and logs the
result together with static or lazily computed fields:

	rows, err := jsonlog.Measure(logger, "dataset loaded", loadAll,
	    jsonlog.WithLazyField("rows", func(v any) any {
	        return v.(*dataset.RecordSet).Len()
	    }),
	)
*/
package jsonlog
