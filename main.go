package main

import "cert-quiz/cmd"

func main() {
	cmd.Execute()
}
