// Package lights drives the backlight, keyboard and notification LED of
// the Nokia N9/N950 through sysfs.
//
// The battery and notifications lights share one LP5521 LED. The
// Controller stores the last request for each and renders exactly one:
// a lit battery request with a timed flash wins, otherwise the
// notification request is shown as it is. Timed flashes are played by
// the chip's blink engine from a program built by FlashPattern.
//
// Every entry point returns a plain error; Status converts it to the
// negative errno the host platform expects.
package lights
