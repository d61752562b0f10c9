package main

import (
	ttpower "github.com/kf7lze/ttpower/src"
)

func main() {
	ttpower.DtmfGenMain()
}
