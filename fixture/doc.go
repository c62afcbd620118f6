/*
Package fixture registers canned responses described in YAML, JSON or TOML
files.

A fixture holds a bindings list. Each entry names its query and either rows
or a single record. Params, ephemeral and page_size are optional; leaving
params out makes the binding match any parameters, while params: [] only
matches a call without parameters.

	bindings:
	  - query: SELECT id, name FROM users WHERE id = ?
	    params: [7]
	    record: {id: 7, name: alpha}
	  - query: SELECT id FROM users
	    ephemeral: true
	    page_size: 2
	    rows:
	      - {id: 1}
	      - {id: 2}
	      - {id: 3}

Files are read with viper, which folds map keys to lower case, so column names
in fixtures should be lower case. Loading is all or nothing: when an entry
fails, bindings registered earlier from the same fixture are removed again.
*/
package fixture
