/*
Package manifest decodes patch job manifests into compiled patch.Jobs.

	   +-----------+   +-----------+   +-----------+
	   |   HCL     |   |   YAML    |   |   JSON    |
	   +-----+-----+   +-----+-----+   +-----+-----+
	         |               |               |
	         +-------+-------+-------+-------+
	                 |
	          +------+------+
	          |  Manifest   |  Validate, then Compile
	          +------+------+
	                 |
	          +------+------+
	          | []patch.Job |
	          +-------------+

🎯 Purpose:
- Keeps job definitions (paths, patterns, replacements) out of Go string literals
- Picks the decoder from the file extension
- Rejects unknown fields, relative paths and empty patterns
- Compiles every pattern up front so a bad one fails before any file is touched

📝 Notes:
Patterns use Go regexp syntax. Replacements are regexp templates, so a literal
dollar sign must be written as $$.
*/
package manifest
