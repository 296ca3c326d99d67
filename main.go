package main

import "github.com/Manu343726/objfile/cmd"

func main() {
	cmd.Execute()
}
