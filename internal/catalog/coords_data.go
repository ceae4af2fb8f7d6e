package catalog

// Real centroid coordinates (longitude, latitude) per state.
var stateCoords = map[string][2]float64{
	"Andhra Pradesh": {79.74, 15.91},
	"Arunachal Pradesh": {94.73, 28.21},
	"Assam": {92.93, 26.20},
	"Bihar": {85.31, 25.09},
	"Chhattisgarh": {81.86, 21.27},
	"Goa": {74.12, 15.29},
	"Gujarat": {71.19, 22.25},
	"Haryana": {76.08, 29.05},
	"Himachal Pradesh": {77.17, 31.10},
	"Jharkhand": {85.27, 23.61},
	"Karnataka": {75.71, 15.31},
	"Kerala": {76.27, 10.85},
	"Madhya Pradesh": {78.65, 22.97},
	"Maharashtra": {75.71, 19.75},
	"Manipur": {93.90, 24.66},
	"Meghalaya": {91.36, 25.46},
	"Mizoram": {92.93, 23.16},
	"Nagaland": {94.56, 26.15},
	"Odisha": {85.09, 20.95},
	"Punjab": {75.34, 31.14},
	"Rajasthan": {74.21, 27.02},
	"Sikkim": {88.51, 27.53},
	"Tamil Nadu": {78.65, 11.12},
	"Telangana": {79.01, 18.11},
	"Tripura": {91.98, 23.94},
	"Uttar Pradesh": {80.94, 26.84},
	"Uttarakhand": {79.01, 30.06},
	"West Bengal": {87.85, 22.98},
	"Andaman and Nicobar Islands": {92.79, 11.74},
	"Chandigarh": {76.77, 30.73},
	"Dadra and Nagar Haveli and Daman and Diu": {73.01, 20.18},
	"Delhi": {77.10, 28.70},
	"Jammu and Kashmir": {74.79, 34.08},
	"Ladakh": {77.57, 34.22},
	"Lakshadweep": {72.18, 10.56},
	"Puducherry": {79.80, 11.94},
}

var districtCoords = map[string][2]float64{
	"Mumbai": {72.87, 19.07},
	"Delhi": {77.21, 28.61},
	"Bangalore": {77.59, 12.97},
	"Chennai": {80.27, 13.08},
	"Kolkata": {88.36, 22.57},
	"Hyderabad": {78.47, 17.38},
	"Ahmedabad": {72.58, 23.02},
	"Pune": {73.85, 18.52},
	"Jaipur": {75.78, 26.91},
	"Lucknow": {80.92, 26.84},
	"Kanpur": {80.35, 26.45},
	"Nagpur": {79.08, 21.14},
	"Visakhapatnam": {83.28, 17.68},
	"Indore": {75.85, 22.72},
	"Patna": {85.13, 25.59},
	"Chandigarh": {76.78, 30.73},
	"Bhopal": {77.40, 23.25},
	"Surat": {72.83, 21.17},
	"Kochi": {76.27, 9.93},
	"Guwahati": {91.75, 26.19},
}
