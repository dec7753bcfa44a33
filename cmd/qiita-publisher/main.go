// qiita-publisher pushes a local markdown file to Qiita, creating the
// article on first publish and updating it afterwards.
package main

import (
	"errors"
	"os"

	"github.com/wataash/qiita-publisher/publish"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, publish.ErrAborted) {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
	os.Exit(1)
}
