// Command autodeletectl inspects and changes the settings database used by
// autodeleted.
//
//	autodeletectl settings show [--json]
//	autodeletectl settings set --percent 90 --folders "/media/movies;/media/shows" --recycle=false
//	autodeletectl evaluate /media/movies/film.mkv --elapsed 900 --duration 1000
//	autodeletectl version
//
// The database is DATA_DIR/autodelete.db unless --db is given. A running
// autodeleted reads settings at startup and on every change made through
// its API; changes made here take effect after it restarts.
package main
