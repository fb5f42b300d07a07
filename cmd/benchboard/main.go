// Command benchboard records benchmark runs and prints the score board.
package main

func main() {
	Execute()
}
