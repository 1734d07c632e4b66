package main

// Gradely API: serves curricula, grade records and GPA reports.
func main() {
	startWithDig()
}
