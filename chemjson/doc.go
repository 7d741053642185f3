//Package chemjson implements the serialization of the results of a
//polar contacts analysis, so they can be read by other, independent
//programs, which can be written in languages other than Go, as long as
//those languages implement a way of unserializing JSON data.
//The whole report is written as one JSON object. Errors are also
//serializable, so a calling program can collect them from the same
//stream.
package chemjson
