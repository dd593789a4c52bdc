// Command httpparse matches HTTP/1.x messages read from files or standard
// input and prints what the grammar extracted.
//
//	httpparse request.txt response.txt
//	printf 'GET / HTTP/1.1\r\n\r\n' | httpparse --format yaml
//
// Every flag can also be set from the environment as HTTPPARSE_<FLAG>, with
// dashes replaced by underscores (for example HTTPPARSE_LOG_LEVEL=debug).
//
// The exit status is 0 if every input matched, 1 if any input did not
// match and 2 on errors.
package main

import (
	"os"
)

func main() {
	os.Exit(newRootCommand(os.Stdin, os.Stdout, os.Stderr).execute())
}
