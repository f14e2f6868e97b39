package main

import "whereto/cmd"

func main() {
	cmd.Execute()
}
