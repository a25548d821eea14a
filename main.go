package main

import "excelPanel/cmd"

func main() {
	cmd.Execute()
}
