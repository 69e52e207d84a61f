package pkgmgr

// Dependencies are the runtime packages every generated API depends on.
var Dependencies = []string{"cors", "express", "morgan"}

// DevDependencies are the development-time packages: the TypeScript
// toolchain, type definitions for the runtime packages, and nodemon.
var DevDependencies = []string{
	"typescript",
	"@types/node",
	"ts-node",
	"@types/cors",
	"@types/express",
	"@types/morgan",
	"nodemon",
}
