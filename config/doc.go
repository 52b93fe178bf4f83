/*
Package config loads DataKit configuration from YAML and the environment.

A configuration names the storage backend and the logging identity:

	filesystem:
	  name: s3
	  region: eu-west-1
	  endpoint_url: http://localhost:9000
	  assumed_roles:
	    - arn:aws:iam::123456789012:role/data-reader
	logging:
	  application: ingest
	  environment: prod
	  level: debug

Credentials never live in the file; AWS_ACCESS_KEY, AWS_SECRET_KEY and
AWS_REGION are read from the environment, optionally seeded from a .env file.
*/
package config
