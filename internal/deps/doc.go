// Package deps checks that the external binaries talkclip shells out to are
// installed and runnable.
package deps
