// Package layout holds the document shell shared by every bench board page.
package layout

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // success, error or info
	Message string
}

// PageData holds data common to every page
type PageData struct {
	Title string
	Flash *FlashMessage
}
