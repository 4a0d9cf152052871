package directory

import "github.com/iota-uz/people-console/pkg/types"

var EmployeesLink = types.NavigationItem{
	Name: "Users",
	Href: "/directory",
}

var StatisticsLink = types.NavigationItem{
	Name:      "Directory statistics",
	Href:      "/directory/statistics",
	AdminOnly: true,
}

var NavItems = []types.NavigationItem{
	{
		Name: "User Directory",
		Href: "/directory",
		Children: []types.NavigationItem{
			EmployeesLink,
			StatisticsLink,
		},
	},
}
