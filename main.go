package main

import "motorcycles-backend/cmd"

func main() {
	cmd.Execute()
}
