/*
Package operation applies configured substitution rules to files on disk.

	+-------------+
	|   Config    |
	|   (Rules)   |
	+------+------+
	       |
	+------+------+
	|    Apply    |
	|   (Match)   |
	+------+------+
	       |
	+------+------+
	|    text     |
	| (Transform) |
	+-------------+

🔄 Flow:
1. Expands each rule's file globs under the root directory
2. Drops files matched by the rule's ignore globs
3. Groups rules per file, keeping config order
4. Rewrites files concurrently through a text.TextReplacer
   and writes them atomically via status.Manager
5. Reports each file via the log package

Files are processed by at most Config.Workers goroutines. The first failure
cancels the rest of the run. In dry-run mode files are read and reported but
never written.
*/
package operation
