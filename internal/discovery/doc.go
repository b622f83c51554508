// Package discovery locates Steam library folders on the local machine and
// decides whether a path is the install folder it claims to be.
//
// A discovery pass enumerates candidate library roots (the Program Files
// Steam install, a SteamLibrary folder per mounted drive, and any extra
// roots the user configured), normalizes each to its "steamapps/common"
// directory, and keeps the ones that exist. Mounted drives come from a
// [VolumeLister]; the reference backend shells out to wmic.
package discovery
