package main

import cmd "github.com/kerbaras/qurandb/cmd/qurandb"

func main() {
	cmd.Execute()
}
